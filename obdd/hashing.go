// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import "math/big"

// _PAIR maps a pair of integers bijectively onto a single integer then folds
// it into [0..size) with a modulo. _TRIPLE composes two applications of _PAIR
// to hash a (level,low,high) triple; both are adapted verbatim from the
// Cantor pairing function used by the BuDDy-derived array engine.
func _PAIR(a, b, size int) int {
	ua, ub := uint64(a), uint64(b)
	return int((((ua+ub)*(ua+ub+1))/2 + ua) % uint64(size))
}

func _TRIPLE(a, b, c, size int) int {
	return _PAIR(c, _PAIR(a, b, size), size)
}

// hasFactor reports whether n (one of a handful of small primes) divides src
// exactly, excluding src itself.
func hasFactor(src, n int) bool {
	return src != n && src%n == 0
}

func hasEasyFactors(src int) bool {
	return hasFactor(src, 3) || hasFactor(src, 5) || hasFactor(src, 7) || hasFactor(src, 11) || hasFactor(src, 13)
}

// primeGte returns the smallest prime >= src, used to size the array engine's
// node table and hash chains so that collisions spread evenly.
func primeGte(src int) int {
	if src%2 == 0 {
		src++
	}
	for {
		if hasEasyFactors(src) {
			src += 2
			continue
		}
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}

// primeLte returns the largest prime <= src.
func primeLte(src int) int {
	if src <= 1 {
		return 2
	}
	if src%2 == 0 {
		src--
	}
	for {
		if hasEasyFactors(src) {
			src -= 2
			continue
		}
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src -= 2
	}
}
