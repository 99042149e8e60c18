// Package service describes the application's modules for introspection.
package service

// Descriptor advertises a module's domain and capabilities. It carries no
// runtime behavior; the system endpoint exposes it so operators and docs can
// enumerate what the deployment serves.
type Descriptor struct {
	Name         string   `json:"name"`
	Domain       string   `json:"domain"`
	Capabilities []string `json:"capabilities"`
}

// WithCapabilities returns a copy of the descriptor with additional
// capabilities appended.
func (d Descriptor) WithCapabilities(caps ...string) Descriptor {
	if len(caps) == 0 {
		return d
	}
	combined := make([]string, 0, len(d.Capabilities)+len(caps))
	combined = append(combined, d.Capabilities...)
	combined = append(combined, caps...)
	d.Capabilities = combined
	return d
}
