// Package simulate provides color vision deficiency simulation.
//
// The Simulator interface is the injection point: analysis code depends
// on the interface, the Machado2009 type implements the physiological
// model, and Cache memoizes any Simulator for the lifetime of one run.
// Tests substitute stub simulators without touching the real model.
package simulate
