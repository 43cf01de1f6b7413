// Package render is the boundary between a live form and whatever displays
// it. It defines the Surface contract, projects data sources onto visible
// rows and carries the helpers surfaces share: hidden submission params,
// server error mapping, localisation and field subsets.
package render
