// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package softdtw_test

import (
	"fmt"

	"github.com/Ivorforce/tslearn/softdtw"
)

func ExampleSoftMin() {
	v, err := softdtw.SoftMin(1, 2, 3, 1)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f\n", v)
	// Output: 0.5924
}

func ExampleLoss() {
	x, _ := softdtw.NewSeries([]float64{0, 1, 2}, 1, 3, 1)
	y, _ := softdtw.NewSeries([]float64{0, 2}, 1, 2, 1)

	opts := softdtw.DefaultOptions()
	opts.Parallel = softdtw.Sequential()

	loss, err := softdtw.Loss(x, y, opts)
	if err != nil {
		panic(err)
	}
	opts.Normalize = true
	normalized, _ := softdtw.Loss(x, y, opts)

	fmt.Printf("%.4f %.4f\n", loss[0], normalized[0])
	// Output: 0.1227 0.7359
}

func ExampleLoss_invalidGamma() {
	x, _ := softdtw.NewSeries([]float64{0, 1}, 1, 2, 1)

	opts := softdtw.DefaultOptions()
	opts.Gamma = 0
	_, err := softdtw.Loss(x, x, opts)
	fmt.Println(err != nil)
	// Output: true
}

func ExampleCDist() {
	a, _ := softdtw.NewSeries([]float64{0, 1, 2, 5, 5, 5}, 2, 3, 1)

	opts := softdtw.DefaultOptions()
	opts.Normalize = true
	m, err := softdtw.CDist(a, a, opts)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f %.1f\n", m.At(0, 0, 0), m.At(0, 1, 1))
	// Output: 0.0 0.0
}

func ExampleBarycenter() {
	s, _ := softdtw.NewSeries([]float64{0, 1, 2, 1, 0}, 1, 5, 1)

	cfg := softdtw.DefaultBarycenterConfig()
	cfg.Gamma = 0.01
	cfg.Method = softdtw.BarycenterSGD
	cfg.MaxIter = 5
	cfg.Parallel = softdtw.Sequential()
	res, err := softdtw.Barycenter([]softdtw.Series{s}, cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Series.Len, res.Series.Dim)
	// Output: 5 1
}
