package ports

// ElementStore is the scratch list behind /list. Elements keep their
// insertion order and duplicates are allowed.
type ElementStore interface {
	Add(element string)
	All() []string
	Clear() int
}
