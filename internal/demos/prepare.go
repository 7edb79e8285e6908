package demos

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Normalize scales every feature to zero mean and unit population standard
// deviation in place. Standard deviations not above eps are replaced by 1 so
// constant features stay finite. The statistics are returned for export.
func (d *Dataset) Normalize(eps float64) (means, stds []float64) {
	if len(d.Samples) == 0 {
		return nil, nil
	}
	features := len(d.Samples[0])
	means = make([]float64, features)
	stds = make([]float64, features)
	column := make([]float64, len(d.Samples))
	for j := 0; j < features; j++ {
		for i, s := range d.Samples {
			column[i] = s[j]
		}
		means[j], stds[j] = stat.PopMeanStdDev(column, nil)
		if !(stds[j] > eps) {
			stds[j] = 1
		}
	}

	for _, s := range d.Samples {
		for j := range s {
			s[j] = (s[j] - means[j]) / stds[j]
		}
	}
	return means, stds
}

// Balance oversamples the minority label of a two-class dataset with
// replacement until both labels have the same count, then shuffles. Every row
// is copied so duplicates do not share storage. Datasets with a missing class
// are left as they are.
func (d *Dataset) Balance(seed int64) {
	byLabel := map[int][]int{}
	for i, l := range d.Labels {
		byLabel[l] = append(byLabel[l], i)
	}
	if len(byLabel) != 2 {
		return
	}

	pos, neg := byLabel[1], byLabel[0]
	if pos == nil || neg == nil {
		return
	}
	minority, target := pos, len(neg)
	if len(neg) < len(pos) {
		minority, target = neg, len(pos)
	}

	rng := rand.New(rand.NewSource(seed))
	indices := append(append([]int(nil), pos...), neg...)
	for n := len(minority); n < target; n++ {
		indices = append(indices, minority[rng.Intn(len(minority))])
	}
	rng.Shuffle(len(indices), func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })

	samples := make([][]float64, len(indices))
	labels := make([]int, len(indices))
	for k, i := range indices {
		samples[k] = append([]float64(nil), d.Samples[i]...)
		labels[k] = d.Labels[i]
	}
	d.Samples, d.Labels = samples, labels
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test).
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Samples)) * ratio)

	train := &Dataset{
		Samples: d.Samples[:splitIdx],
		Labels:  d.Labels[:splitIdx],
	}

	test := &Dataset{
		Samples: d.Samples[splitIdx:],
		Labels:  d.Labels[splitIdx:],
	}

	return train, test
}
