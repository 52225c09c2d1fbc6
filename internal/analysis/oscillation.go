package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ecodyn/lotkasim/internal/sim"
)

// Summary describes the oscillation of each population over the sampled
// window: half peak-to-peak amplitude and dominant frequency in cycles
// per unit time. Zero values mean no oscillation was observed, which is
// a valid outcome, not a failure.
type Summary struct {
	PreyAmplitude     float64
	PredatorAmplitude float64
	PreyFrequency     float64
	PredatorFrequency float64
}

// Analyze estimates amplitude and dominant frequency independently for
// the prey and predator series. The trajectory is only read.
//
// Frequency comes from the Fourier spectrum of the mean-removed series,
// but the bin search is anchored to the time-domain extrema-spacing
// estimate and the winning bin is refined by parabolic interpolation.
// The window rarely captures an integer number of cycles, so the
// fundamental leaks across neighboring bins while a harmonic of a spiky
// series can land exactly on one; the raw magnitude-max bin would then
// report the harmonic. A series showing fewer than two local extrema
// reports 0 for both quantities: the window was too short (or the
// dynamics degenerate) to witness a full swing.
func Analyze(traj *sim.Trajectory) Summary {
	if traj == nil || traj.Len() < 2 {
		return Summary{}
	}

	dt := (traj.Times[traj.Len()-1] - traj.Times[0]) / float64(traj.Len()-1)

	preyAmp, preyFreq := oscillation(traj.Prey, dt)
	predAmp, predFreq := oscillation(traj.Predator, dt)

	return Summary{
		PreyAmplitude:     preyAmp,
		PredatorAmplitude: predAmp,
		PreyFrequency:     preyFreq,
		PredatorFrequency: predFreq,
	}
}

func oscillation(series []float64, dt float64) (amplitude, frequency float64) {
	if dt <= 0 || len(LocalMaxima(series))+len(LocalMinima(series)) < 2 {
		return 0, 0
	}

	min, max := series[0], series[0]
	for _, v := range series {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	amplitude = (max - min) / 2

	frequency = dominantFrequency(series, dt)
	if frequency == 0 {
		return 0, 0
	}
	return amplitude, frequency
}

// dominantFrequency picks the strongest spectral bin within one bin of
// the time-domain estimate and refines it by fitting a parabola through
// the bin and its neighbors. Without a time-domain anchor (one maximum
// and one minimum only) it falls back to the global magnitude max.
func dominantFrequency(series []float64, dt float64) float64 {
	n := len(series)
	if n < 4 {
		return 0
	}

	mags := magnitudeSpectrum(series)

	lo, hi := 1, n/2
	if f0 := extremaSpacingEstimate(series, dt); f0 > 0 {
		center := int(math.Round(f0 * dt * float64(n)))
		if center-1 > lo {
			lo = center - 1
		}
		if center+1 < hi {
			hi = center + 1
		}
		if lo > hi {
			lo = hi
		}
	}

	best := lo
	for k := lo + 1; k <= hi; k++ {
		if mags[k] > mags[best] {
			best = k
		}
	}
	if mags[best] == 0 {
		return 0
	}

	pos := float64(best)
	if best > 0 && best < n/2 {
		prev, cur, next := mags[best-1], mags[best], mags[best+1]
		if denom := prev - 2*cur + next; denom != 0 {
			pos += 0.5 * (prev - next) / denom
		}
	}
	return pos / (float64(n) * dt)
}

// extremaSpacingEstimate is the time-domain frequency guess. Two or more
// maxima give full periods directly; otherwise consecutive extrema are
// half a period apart.
func extremaSpacingEstimate(series []float64, dt float64) float64 {
	maxima := LocalMaxima(series)
	if len(maxima) >= 2 {
		span := float64(maxima[len(maxima)-1]-maxima[0]) * dt
		return float64(len(maxima)-1) / span
	}

	extrema := append(maxima, LocalMinima(series)...)
	if len(extrema) < 2 {
		return 0
	}
	first, last := extrema[0], extrema[0]
	for _, i := range extrema {
		if i < first {
			first = i
		}
		if i > last {
			last = i
		}
	}
	span := float64(last-first) * dt
	if span <= 0 {
		return 0
	}
	return float64(len(extrema)-1) / (2 * span)
}

func magnitudeSpectrum(series []float64) []float64 {
	n := len(series)

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	mags := make([]float64, n/2+1)
	for k := range mags {
		mags[k] = cmplx.Abs(spectrum[k])
	}
	return mags
}

// PowerSpectrum returns the single-sided magnitude spectrum of the
// mean-removed series, for plotting.
func PowerSpectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	return magnitudeSpectrum(series)
}

// LocalMaxima returns the indices of strict interior peaks.
func LocalMaxima(series []float64) []int {
	var peaks []int
	for i := 1; i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] > series[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// LocalMinima returns the indices of strict interior troughs. Together
// with LocalMaxima it decides whether a full swing was observed.
func LocalMinima(series []float64) []int {
	var troughs []int
	for i := 1; i < len(series)-1; i++ {
		if series[i] < series[i-1] && series[i] < series[i+1] {
			troughs = append(troughs, i)
		}
	}
	return troughs
}

// PeakSpacingFrequency is the pure time-domain estimate: the inverse of
// the mean interval between successive local maxima. Kept as a
// cross-check against the spectral estimate; returns 0 with fewer than
// two peaks.
func PeakSpacingFrequency(series, times []float64) float64 {
	peaks := LocalMaxima(series)
	if len(peaks) < 2 {
		return 0
	}

	total := times[peaks[len(peaks)-1]] - times[peaks[0]]
	if total <= 0 {
		return 0
	}
	return float64(len(peaks)-1) / total
}
