package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Hu1906/TKB/internal/models"
)

// Snapshot is the JSON interchange form of a catalog dump: the subject and
// class collections as the importer writes them.
type Snapshot struct {
	Subjects []models.Course  `json:"subjects"`
	Classes  []models.Section `json:"classes"`
}

// LoadSnapshot reads a catalog snapshot file into a Store.
func LoadSnapshot(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return NewStore(snapshot.Subjects, snapshot.Classes), nil
}
