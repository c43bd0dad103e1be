package db

// NodeRanking is the subset of node columns the read path needs to build
// the ranked API view. The full row additionally carries channels,
// updated_at, the serialized city/country locale maps, and the
// server-assigned imported_at timestamp.
type NodeRanking struct {
	PublicKey string
	Alias     *string
	Capacity  int64
	FirstSeen int64
}
