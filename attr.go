package markupwriter

import "strconv"

// Property is a name/value pair written into an opening or self-closing tag,
// e.g. an HTML or XML attribute. Neither part is escaped.
type Property struct {
	Name  string
	Value string
}

// Props builds properties from alternating names and values. A trailing name
// without a value gets an empty value.
//
//	w.Properties(markupwriter.Props("href", "style.css", "rel", "stylesheet")...)
func Props(pairs ...string) []Property {
	props := make([]Property, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		p := Property{Name: pairs[i]}
		if i+1 < len(pairs) {
			p.Value = pairs[i+1]
		}
		props = append(props, p)
	}
	return props
}

func (p Property) Bool(v bool) Property   { p.Value = strconv.FormatBool(v); return p }
func (p Property) Int(v int) Property     { p.Value = strconv.Itoa(v); return p }
func (p Property) Int64(v int64) Property { p.Value = strconv.FormatInt(v, 10); return p }
func (p Property) Uint64(v uint64) Property {
	p.Value = strconv.FormatUint(v, 10)
	return p
}
func (p Property) Float64(v float64) Property {
	p.Value = strconv.FormatFloat(v, 'g', -1, 64)
	return p
}
