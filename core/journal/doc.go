// Package journal persists the charge attempts and arrivals of simulation
// runs so they can be queried after the run ended.
package journal
