// Package analysis extracts oscillation descriptors from simulated
// trajectories.
//
//   - [Analyze]: amplitude and dominant frequency per population
//   - [PowerSpectrum]: single-sided magnitude spectrum for plotting
//   - [PeakSpacingFrequency]: time-domain cross-check estimate
//
// A window too short to contain two population peaks reports zero
// amplitude and frequency rather than an error.
package analysis
