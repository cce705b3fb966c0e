// Package solar converts a rooftop area and an electricity bill into system
// sizing, energy output, savings and CO2 figures.
//
// Every Compute function is pure: it receives all inputs as parameters and
// returns a new value. Failures are never fatal; each function returns a
// well-defined fallback result together with an error that Estimator turns
// into a model.Notice on the report.
package solar
