package schema

// Compose merges base into extension. The result lists the base fields first,
// with any field the extension redeclares replacing the base entry at its
// original position, followed by the extension's remaining fields in
// declaration order. TypeID, Extends and ForcedExtension come from extension.
func Compose(base, extension FieldSet) (FieldSet, error) {
	baseID := normalizeTypeID(base.TypeID)
	extID := normalizeTypeID(extension.TypeID)

	if baseID == "" || normalizeTypeID(extension.Extends) != baseID {
		return FieldSet{}, &CompositionError{Kind: CompositionMismatch, TypeID: extID, Related: baseID}
	}
	if extID == baseID {
		return FieldSet{}, &CompositionError{Kind: CompositionCycle, TypeID: extID, Related: baseID}
	}

	fields := cloneDescriptors(base.Fields)
	if fields == nil {
		fields = make([]Descriptor, 0, len(extension.Fields))
	}
	index := make(map[string]int, len(fields)+len(extension.Fields))
	for i, d := range fields {
		index[d.Name] = i
	}
	for _, d := range extension.Fields {
		if i, ok := index[d.Name]; ok {
			fields[i] = d.Clone()
			continue
		}
		index[d.Name] = len(fields)
		fields = append(fields, d.Clone())
	}

	return FieldSet{
		TypeID:          extension.TypeID,
		Fields:          fields,
		Extends:         extension.Extends,
		ForcedExtension: extension.ForcedExtension,
	}, nil
}
