package tooltip

// ClassDiff is the class change a renderer applies to the tooltip element.
type ClassDiff struct {
	Add    []string
	Remove []string
}

// Empty reports whether the diff changes nothing.
func (d ClassDiff) Empty() bool { return len(d.Add) == 0 && len(d.Remove) == 0 }

// swap builds the diff replacing class from with class to. Empty names are
// skipped and replacing a class with itself is a no-op.
func swap(from, to string) ClassDiff {
	var d ClassDiff
	if from == to {
		return d
	}
	if from != "" {
		d.Remove = []string{from}
	}
	if to != "" {
		d.Add = []string{to}
	}
	return d
}
