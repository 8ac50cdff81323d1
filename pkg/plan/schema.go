package plan

// documentSchema validates the shape of an external plan document before it
// is decoded. Semantic checks (action resolution, argument types, ordering
// cycles) happen in the adapter afterwards.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "type", "actions"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "type": {"type": "string", "enum": ["sequential", "partial-order"]},
    "actions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "action"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "action": {"type": "string", "minLength": 1},
          "arguments": {"type": "object"},
          "depends_on": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          },
          "preconditions": {"$ref": "#/definitions/conditions"},
          "postconditions": {"$ref": "#/definitions/conditions"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false,
  "definitions": {
    "conditions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["fluent"],
        "properties": {
          "fluent": {"type": "string", "minLength": 1},
          "args": {
            "type": "array",
            "items": {"type": "string"}
          },
          "operator": {"type": "string", "enum": ["eq", "ne", "lt", "le", "gt", "ge"]},
          "value": {}
        },
        "additionalProperties": false
      }
    }
  }
}`
