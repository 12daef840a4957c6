package netcdf

import "fmt"

// Dimension is a named axis. Size is a snapshot taken when the dimension
// was loaded or added; for an unlimited dimension use Variable.Shape for
// the current length.
type Dimension struct {
	ID        int
	Name      string
	Size      uint64
	Unlimited bool
}

// IsUnlimited reports whether the dimension grows as records are written.
func (d Dimension) IsUnlimited() bool {
	return d.Unlimited
}

func (d Dimension) String() string {
	if d.Unlimited {
		return fmt.Sprintf("%s = UNLIMITED ; // (%d currently)", d.Name, d.Size)
	}
	return fmt.Sprintf("%s = %d ;", d.Name, d.Size)
}
