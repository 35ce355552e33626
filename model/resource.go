package model

// LineResource describes where a line's route document lives and how the
// line is styled.
type LineResource struct {
	ID       string
	Name     string
	FileName string
	Colour   uint32 // ARGB
}

// Built-in resources for the tube lines bundled with the application.
var (
	Central    = LineResource{ID: "central", Name: "Central", FileName: "central_inbound.json", Colour: 0xFFDC241F}
	Northern   = LineResource{ID: "northern", Name: "Northern", FileName: "northern_inbound.json", Colour: 0xFF000000}
	Piccadilly = LineResource{ID: "piccadilly", Name: "Piccadilly", FileName: "piccadilly_inbound.json", Colour: 0xFF0019A8}
	Victoria   = LineResource{ID: "victoria", Name: "Victoria", FileName: "victoria_inbound.json", Colour: 0xFF00A0E2}
	Bakerloo   = LineResource{ID: "bakerloo", Name: "Bakerloo", FileName: "bakerloo_inbound.json", Colour: 0xFF894E24}
	District   = LineResource{ID: "district", Name: "District", FileName: "district_inbound.json", Colour: 0xFF007229}
	Jubilee    = LineResource{ID: "jubilee", Name: "Jubilee", FileName: "jubilee_inbound.json", Colour: 0xFF868F98}
)

// DefaultLineResources returns the built-in tube line resources.
func DefaultLineResources() []LineResource {
	return []LineResource{Central, Northern, Piccadilly, Victoria, Bakerloo, District, Jubilee}
}
