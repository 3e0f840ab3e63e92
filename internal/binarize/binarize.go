// Package binarize converts intensity scan lines into binary sequences using
// a selectable threshold method. Otsu is the primary method; the others are
// refinement fallbacks tried only when Otsu's output is rejected downstream.
package binarize

import (
	"math"
	"sort"
)

// Method identifies a threshold selection algorithm.
type Method int

const (
	MethodOtsu Method = iota
	MethodMean
	MethodMedian
	MethodAdaptive
)

func (m Method) String() string {
	switch m {
	case MethodOtsu:
		return "otsu"
	case MethodMean:
		return "mean"
	case MethodMedian:
		return "median"
	case MethodAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Methods returns all threshold methods in the order the pipeline tries them.
// Otsu comes first; barcode lines are bimodal (ink vs substrate) and Otsu is
// the standard optimal bimodal splitter.
func Methods() []Method {
	return []Method{MethodOtsu, MethodMean, MethodMedian, MethodAdaptive}
}

// Threshold computes the threshold value for line using the given method.
func Threshold(line []uint8, method Method) uint8 {
	if len(line) == 0 {
		return 0
	}
	switch method {
	case MethodOtsu:
		return otsu(line)
	case MethodMean:
		return mean(line)
	case MethodMedian:
		return median(line)
	case MethodAdaptive:
		return adaptive(line)
	default:
		return otsu(line)
	}
}

// Binarize maps line to a binary sequence: pixel < threshold -> 0, else -> 1.
// The result is written into dst if it has sufficient capacity.
func Binarize(line []uint8, threshold uint8, dst []uint8) []uint8 {
	if cap(dst) < len(line) {
		dst = make([]uint8, len(line))
	}
	dst = dst[:len(line)]
	for i, v := range line {
		if v < threshold {
			dst[i] = 0
		} else {
			dst[i] = 1
		}
	}
	return dst
}

// otsu selects the threshold maximizing between-class variance
// wB*wF*(mB-mF)^2 over a 256-bin histogram of the line.
func otsu(line []uint8) uint8 {
	var histogram [256]int
	for _, v := range line {
		histogram[v]++
	}
	total := len(line)

	var totalSum float64
	for i, count := range histogram {
		totalSum += float64(i) * float64(count)
	}

	var maxVariance float64
	best := 0
	var sumB float64
	wB := 0

	for t := 0; t < 256; t++ {
		wB += histogram[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(histogram[t])
		meanB := sumB / float64(wB)
		meanF := (totalSum - sumB) / float64(wF)

		variance := float64(wB) * float64(wF) * (meanB - meanF) * (meanB - meanF)
		if variance > maxVariance {
			maxVariance = variance
			best = t
		}
	}
	// The argmax bin is the last background value; split just above it.
	if best < 255 {
		best++
	}
	return uint8(best)
}

func mean(line []uint8) uint8 {
	var sum int
	for _, v := range line {
		sum += int(v)
	}
	return uint8(sum / len(line))
}

func median(line []uint8) uint8 {
	sorted := make([]uint8, len(line))
	copy(sorted, line)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

// adaptive uses mean - 0.5*stddev, which biases the split toward ink on
// low-contrast lines.
func adaptive(line []uint8) uint8 {
	var sum float64
	for _, v := range line {
		sum += float64(v)
	}
	m := sum / float64(len(line))

	var variance float64
	for _, v := range line {
		d := float64(v) - m
		variance += d * d
	}
	variance /= float64(len(line))

	t := m - 0.5*math.Sqrt(variance)
	if t < 0 {
		t = 0
	}
	return uint8(t)
}
