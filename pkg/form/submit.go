package form

// ActiveParams is the flat submission projection: every submittable encoded
// pair in section then row order, followed by the auxiliary params. Later
// entries overwrite earlier ones for the same key.
func (ds *DataSource) ActiveParams() map[string]string {
	out := map[string]string{}
	for _, section := range ds.sections {
		for _, item := range section.rows {
			pair, ok := item.Encode()
			if !ok || !pair.Submittable() {
				continue
			}
			out[pair.Key] = pair.Value
		}
	}
	for key, val := range ds.params {
		out[key] = val
	}
	return out
}

// Submit is an alias for ActiveParams.
func (ds *DataSource) Submit() map[string]string {
	return ds.ActiveParams()
}
