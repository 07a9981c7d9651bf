// Package descriptor reads domain descriptions from YAML files and turns
// them into a generation pass.
//
// A descriptor lists domains in order, each with its properties in
// declaration order:
//
//	version: "1"
//	package: example.com/fleet
//	domains:
//	  - name: StarShip
//	    root: true
//	    properties:
//	      - name: string
//	      - crewMap: map[string]Passenger
//	      - notes: "[]string?"
//	      - name: launched
//	        type: time.Time
//	        transform: {input: string, template: "mustParse(%N)"}
//	  - name: Passenger
//	    map_group: single
//	    properties:
//	      - name: string
//	transforms:
//	  - type: example.com/fleet.Code
//	    input: string
//
// Type expressions use Go syntax: scalars, []T, map[K]V, qualified names
// (pkg/path.Name) and short names of declared domains. A trailing "?" marks
// the property nullable.
package descriptor
