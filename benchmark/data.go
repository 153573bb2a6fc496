// Package benchmark compares the jsondoc engine against encoding/json,
// fastjson and gjson on shared document corpora.
package benchmark

import "fmt"

var smallJSON = []byte(`{"name":"John","age":30,"city":"New York"}`)

var mediumJSON = []byte(`{
  "name": "John Smith",
  "age": 35,
  "address": {
    "street": "123 Main St",
    "city": "San Francisco",
    "state": "CA",
    "zip": "94103"
  },
  "phones": [
    {"type": "home", "number": "555-1234"},
    {"type": "work", "number": "555-5678"}
  ],
  "email": "john@example.com",
  "active": true,
  "scores": [95, 87, 92, 78, 85]
}`)

var largeJSON = generateLargeJSON(1000)

// generateLargeJSON builds an object with n array items of mixed scalar
// payloads.
func generateLargeJSON(n int) []byte {
	out := []byte(`{"items":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		item := fmt.Sprintf(`{"id":%d,"name":"Item %d","value":%d,"active":%v}`,
			i, i, i*10, i%3 == 0)
		out = append(out, item...)
	}
	out = append(out, fmt.Sprintf(`],"count":%d}`, n)...)
	return out
}
