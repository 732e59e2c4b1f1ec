// Copyright (c) 2020 Mercari, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package override

// documentSchema is the JSON schema of an override document.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "definitions": {
    "meta": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {"type": "string"}
      }
    },
    "association": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "property": {"type": "string"},
        "exclude":  {"type": "boolean"},
        "cascade":  {"type": "string"},
        "fetch":    {"type": "string", "enum": ["join", "select", "subselect"]},
        "update":   {"type": "boolean"},
        "insert":   {"type": "boolean"}
      }
    }
  },
  "properties": {
    "schemaSelections": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "catalog": {"type": "string"},
          "schema":  {"type": "string"},
          "table":   {"type": "string"}
        }
      }
    },
    "typeMappings": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["sqlType", "type"],
        "properties": {
          "sqlType":   {"type": "string", "minLength": 1},
          "length":    {"type": "integer", "minimum": -1},
          "precision": {"type": "integer", "minimum": 0},
          "scale":     {"type": "integer", "minimum": 0},
          "notNull":   {"type": "boolean"},
          "type":      {"type": "string", "minLength": 1}
        }
      }
    },
    "tableFilters": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "matchCatalog": {"type": "string"},
          "matchSchema":  {"type": "string"},
          "matchName":    {"type": "string"},
          "exclude":      {"type": "boolean"},
          "package":      {"type": "string"},
          "meta":         {"$ref": "#/definitions/meta"}
        }
      }
    },
    "tables": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name"],
        "properties": {
          "catalog": {"type": "string"},
          "schema":  {"type": "string"},
          "name":    {"type": "string", "minLength": 1},
          "class":   {"type": "string"},
          "meta":    {"$ref": "#/definitions/meta"},
          "primaryKey": {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "property":    {"type": "string"},
              "compositeId": {"type": "string"},
              "columns":     {"type": "array", "items": {"type": "string"}},
              "generator": {
                "type": "object",
                "additionalProperties": false,
                "required": ["class"],
                "properties": {
                  "class":  {"type": "string", "minLength": 1},
                  "params": {"type": "object", "additionalProperties": {"type": "string"}}
                }
              }
            }
          },
          "columns": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["name"],
              "properties": {
                "name":     {"type": "string", "minLength": 1},
                "type":     {"type": "string"},
                "property": {"type": "string"},
                "exclude":  {"type": "boolean"},
                "meta":     {"$ref": "#/definitions/meta"}
              }
            }
          },
          "foreignKeys": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["constraintName"],
              "properties": {
                "constraintName": {"type": "string", "minLength": 1},
                "foreignCatalog": {"type": "string"},
                "foreignSchema":  {"type": "string"},
                "foreignTable":   {"type": "string"},
                "columns": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "additionalProperties": false,
                    "required": ["name", "references"],
                    "properties": {
                      "name":       {"type": "string", "minLength": 1},
                      "references": {"type": "string", "minLength": 1}
                    }
                  }
                },
                "manyToOne": {"$ref": "#/definitions/association"},
                "inverse":   {"$ref": "#/definitions/association"}
              }
            }
          }
        }
      }
    }
  }
}`
