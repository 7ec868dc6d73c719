package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// It stays in sync when fields are added to Settings.
func GetSettingsExample() map[string]any {
	return exampleFor(reflect.TypeOf(Settings{}))
}

func exampleFor(t reflect.Type) map[string]any {
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return exampleFor(t)
	case reflect.Bool:
		return fieldName == "debug"
	case reflect.Int:
		switch fieldName {
		case "max_log_files":
			return 1000
		case "max_frames_per_tick":
			return 5
		}
		return 10
	case reflect.Float64:
		switch fieldName {
		case "degrees_per_step":
			return 15.0
		case "friction":
			return 0.92
		case "stop_threshold":
			return 20.0
		}
		return 1.0
	case reflect.String:
		switch fieldName {
		case "default_preset":
			return "premiere"
		case "keymap_store":
			return KeymapStoreLocal
		case "remote_token":
			return "<token>"
		case "remote_url":
			return "https://desk.example.com"
		case "ssh_host":
			return DefaultSSHHost
		case "ssh_port":
			return DefaultSSHPort
		case "user":
			return "editor"
		default:
			return "example"
		}
	}

	return nil
}
