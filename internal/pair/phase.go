package pair

// Phase identifies where a resolution currently stands. A resolution moves
// strictly forward; PhaseFailed is reachable from every non-terminal phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetchingPairBatch
	PhaseDecodingPairBatch
	PhaseFetchingTokenBatch
	PhaseDecodingTokenBatch
	PhaseNormalizing
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetchingPairBatch:
		return "fetching_pair_batch"
	case PhaseDecodingPairBatch:
		return "decoding_pair_batch"
	case PhaseFetchingTokenBatch:
		return "fetching_token_batch"
	case PhaseDecodingTokenBatch:
		return "decoding_token_batch"
	case PhaseNormalizing:
		return "normalizing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}
