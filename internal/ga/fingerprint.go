package ga

import "math/rand"

// fingerprintPrime is the fixed prime p in F4's modulus, grounded on
// spec.md §4.9.1's "(row[0]*row[1]*row[2]) mod p for a fixed prime p".
const fingerprintPrime = 1_000_003

// ComputeFingerprint builds the 4-tuple locality-sensitive signature of a
// lineup used to cluster a large lineup pool cheaply, per spec.md §4.9.1.
func ComputeFingerprint(row Lineup) Fingerprint {
	l := len(row)
	half := l / 2

	var f1, f2 int64
	for i := 0; i < half; i++ {
		f1 += int64(row[i])
	}
	for i := half; i < l; i++ {
		f2 += int64(row[i])
	}

	var f3 int64
	for _, id := range row {
		f3 ^= int64(id)
	}

	f4 := int64(0)
	if l >= 3 {
		f4 = (int64(row[0]) * int64(row[1]) * int64(row[2])) % fingerprintPrime
	}

	return Fingerprint{F1: f1, F2: f2, F3: f3, F4: f4}
}

// FingerprintClusters partitions a lineup pool into C buckets by hashing
// each row's fingerprint tuple, a lightweight locality-sensitive family:
// similar lineups collide with higher probability than dissimilar ones.
func FingerprintClusters(pool []Lineup, c int) [][]int {
	if c <= 0 {
		c = 1
	}
	clusters := make([][]int, c)
	for i, row := range pool {
		fp := ComputeFingerprint(row)
		bucket := fingerprintHash(fp) % uint64(c)
		clusters[bucket] = append(clusters[bucket], i)
	}
	return clusters
}

func fingerprintHash(fp Fingerprint) uint64 {
	h := uint64(1469598103934665603) // FNV offset basis
	for _, v := range []int64{fp.F1, fp.F2, fp.F3, fp.F4} {
		h ^= uint64(v)
		h *= 1099511628211 // FNV prime
	}
	return h
}

// SampleDiverseSets produces k sets of n lineups each by assigning each of
// the k*n slots to a cluster in permuted round-robin order so every set
// pulls from n distinct clusters, drawing uniformly without replacement
// inside a cluster. Falls back to uniform sampling from lp when clustering
// fails or yields fewer than n non-empty clusters, per spec.md §4.9.1.
func SampleDiverseSets(lp []Lineup, k, n int, numClusters int, rng *rand.Rand) []LineupSet {
	clusters := FingerprintClusters(lp, numClusters)
	nonEmpty := make([][]int, 0, len(clusters))
	for _, c := range clusters {
		if len(c) > 0 {
			nonEmpty = append(nonEmpty, c)
		}
	}

	if len(nonEmpty) < n {
		return sampleDiverseSetsUniform(lp, k, n, rng)
	}

	sets := make([]LineupSet, k)
	for s := 0; s < k; s++ {
		order := shuffledIndices(rng, len(nonEmpty))
		set := make(LineupSet, n)
		for i := 0; i < n; i++ {
			cluster := nonEmpty[order[i%len(order)]]
			pick := cluster[rng.Intn(len(cluster))]
			set[i] = lp[pick]
		}
		sets[s] = set
	}
	return sets
}

func sampleDiverseSetsUniform(lp []Lineup, k, n int, rng *rand.Rand) []LineupSet {
	sets := make([]LineupSet, k)
	for s := 0; s < k; s++ {
		order := shuffledIndices(rng, len(lp))
		set := make(LineupSet, n)
		for i := 0; i < n; i++ {
			set[i] = lp[order[i%len(order)]]
		}
		sets[s] = set
	}
	return sets
}
