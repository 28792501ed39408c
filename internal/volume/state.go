package volume

// State is what the overlay shows for one frame. It is rebuilt every
// frame; only the sink's last-known percentage carries over.
type State struct {
	Percent  int
	Active   bool
	Distance float64
	Demo     bool
}
