package metrics

// RequestSecondsBuckets is shared by every outbound client histogram so
// latency panels line up across providers.
var RequestSecondsBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}
