package ai

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// GenerateSchema reflects T into a JSON schema accepted by strict structured
// output: no references, no additional properties, every property required.
func GenerateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	schemaObj, err := schemaToMap(schema)
	if err != nil {
		panic(err)
	}
	delete(schemaObj, "$schema")
	delete(schemaObj, "$id")
	ensureStrictCompliance(schemaObj)
	return schemaObj
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

func ensureStrictCompliance(schema map[string]interface{}) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false

		if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
			requiredFields := make([]string, 0, len(properties))
			for propName := range properties {
				requiredFields = append(requiredFields, propName)
			}
			if len(requiredFields) > 0 {
				schema[requiredKey] = requiredFields
			}
		}
	}

	if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				ensureStrictCompliance(propMap)
			}
		}
	}

	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		ensureStrictCompliance(items)
	}
}

var (
	schemaOnce    sync.Once
	extractSchema map[string]interface{}
	analyzeSchema map[string]interface{}
)

// SchemaFor returns the output schema name and body for a variant
func SchemaFor(v entities.Variant) (string, map[string]interface{}) {
	schemaOnce.Do(func() {
		extractSchema = GenerateSchema[entities.ExtractedMeeting]()
		analyzeSchema = GenerateSchema[entities.AnalyzedMeeting]()
	})
	if v == entities.VariantAnalysis {
		return "AnalyzedMeeting", analyzeSchema
	}
	return "ExtractedMeeting", extractSchema
}
