package lineup

type SetLineupRequest struct {
	PerformerIDs []int64 `json:"performer_ids"`
}
