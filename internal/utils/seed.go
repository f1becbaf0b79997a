package utils

import "hash/fnv"

// FlightSeed derives a stable seed from a flight number so generated fixture
// data stays identical across runs for the same flight.
func FlightSeed(flightNumber string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(flightNumber))
	return h.Sum64()
}
