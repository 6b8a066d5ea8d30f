package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	return exampleForStruct(reflect.TypeOf(Settings{}))
}

func exampleForStruct(t reflect.Type) map[string]any {
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return exampleForStruct(t)
	case reflect.Bool:
		return fieldName == "cache_enabled"
	case reflect.Int:
		switch fieldName {
		case "cache_max_age_hours":
			return DefaultCacheMaxAgeHours
		case "low":
			return 20
		case "max_log_files":
			return 1000
		case "medium":
			return 70
		case "prefetch_concurrency":
			return DefaultPrefetchConcurrency
		case "timeout_seconds":
			return DefaultTimeoutSeconds
		default:
			return 10
		}
	case reflect.String:
		switch fieldName {
		case "default_repo":
			return "mozilla-central"
		case "endpoint":
			return DefaultEndpoint
		case "ssh_host":
			return DefaultSSHHost
		case "ssh_port":
			return DefaultSSHPort
		default:
			return "example"
		}
	}

	return nil
}
