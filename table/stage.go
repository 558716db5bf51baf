package table

// Stage is a per-worker context holding a shadow Data keyed by table (see
// Record's doc comment for why keying by *Table rather than Type is
// equivalent), plus a per-stage overlay of the entity index. Mutations
// performed while a world is in progress target a Stage's shadow Data and
// its entity-index overlay, isolating them from the committed tables that
// queries may be iterating concurrently with the logical frame.
type Stage struct {
	dataStage map[*Table]*Data
	entities  EntityIndex
}

// NewStage creates a Stage backed by the given entity index. For the main
// stage, entities should be the world's canonical index; for a worker
// stage, it should be an overlay that reads through to the main index (see
// entityindex.Overlay).
func NewStage(entities EntityIndex) *Stage {
	return &Stage{
		dataStage: make(map[*Table]*Data),
		entities:  entities,
	}
}

// Entities returns the stage's entity index.
func (s *Stage) Entities() EntityIndex { return s.entities }
