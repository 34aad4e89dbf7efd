package inspect

func appendFieldUnique(fields []Field, field Field) []Field {
	for _, existing := range fields {
		if existing.Name == field.Name {
			return fields
		}
	}
	return append(fields, field)
}

func appendFieldNonEmpty(fields []Field, name, value string) []Field {
	if value == "" {
		return fields
	}
	return appendFieldUnique(fields, Field{Name: name, Value: value})
}
