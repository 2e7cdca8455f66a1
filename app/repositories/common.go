package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
)

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

func commentKey(id string) []byte {
	return []byte(CommentKeyPrefix + id)
}

// newID returns a fresh opaque record identifier.
func newID() string {
	return uuid.NewString()
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
