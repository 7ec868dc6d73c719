package storage

import (
	"encoding/json"
	"fmt"

	"cutdesk/internal/domain"
)

// userKeymapModelToDomain converts a UserKeymapModel (GORM) to domain.UserKeymap
func userKeymapModelToDomain(m UserKeymapModel) (*domain.UserKeymap, error) {
	bindings := make(map[string]string)
	if m.CustomBindingsJSON != "" {
		if err := json.Unmarshal([]byte(m.CustomBindingsJSON), &bindings); err != nil {
			return nil, fmt.Errorf("failed to decode custom bindings for %s: %w", m.UserID, err)
		}
	}

	return &domain.UserKeymap{
		ActivePreset:   m.ActivePreset,
		CreatedAt:      m.CreatedAt,
		CustomBindings: bindings,
		UpdatedAt:      m.UpdatedAt,
		User:           m.UserID,
	}, nil
}

// encodeBindings serialises custom bindings for the custom_bindings_json column
func encodeBindings(bindings map[string]string) (string, error) {
	if bindings == nil {
		bindings = map[string]string{}
	}
	data, err := json.Marshal(bindings)
	if err != nil {
		return "", fmt.Errorf("failed to encode custom bindings: %w", err)
	}
	return string(data), nil
}
