package ga

// Mode names how the engine should satisfy a multilineup request, per
// spec.md §4.9.6.
type Mode string

const (
	ModePostProcessing Mode = "post_processing"
	ModeSetBased       Mode = "set_based"
)

// DispatchConfig is the small decision surface the Dispatcher reads.
type DispatchConfig struct {
	TargetLineups int
	Mode          Mode
	PoolSize      int
}

// Decision is the Dispatcher's resolved plan.
type Decision struct {
	UseSetBased      bool
	PreferFingerprint bool
}

// Dispatch resolves which engine path to run and whether the fingerprint
// sampler should be preferred over pairwise-similarity sampling in
// §4.9.1, per spec.md §4.9.6:
//   - target_lineups == 1 -> single-lineup loop (never set-based).
//   - mode == post_processing -> single-lineup loop then the diverse
//     post-selector.
//   - otherwise (mode == set_based, the default for target_lineups > 1)
//     -> the set-based engine with LP of size pool_size.
//   - heuristic: when pool_size * target_lineups > 1000, always prefer
//     fingerprint sampling over pairwise similarity-based sampling.
func Dispatch(cfg DispatchConfig) Decision {
	if cfg.TargetLineups <= 1 {
		return Decision{UseSetBased: false, PreferFingerprint: false}
	}
	if cfg.Mode == ModePostProcessing {
		return Decision{UseSetBased: false, PreferFingerprint: false}
	}

	work := cfg.PoolSize * cfg.TargetLineups
	return Decision{UseSetBased: true, PreferFingerprint: work > 1000}
}
