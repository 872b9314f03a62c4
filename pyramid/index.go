package pyramid

import "fmt"

// Orientation identifies a 2D wavelet detail band.
type Orientation int

const (
	// Horizontal is the vertically high-passed, horizontally low-passed band
	// (low-high). It responds to horizontal edges.
	Horizontal Orientation = iota
	// Vertical is the vertically low-passed, horizontally high-passed band
	// (high-low). It responds to vertical edges.
	Vertical
	// Diagonal is high-passed along both axes (high-high).
	Diagonal
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// BandIndex maps (level, orientation) to the position of that band in the
// flat band list of a pyramid with the given height and bands per level.
//
// Detail levels 0..height-2 hold bandsPerLevel bands each, finest first; the
// low-pass residual at level height-1 is the last entry and only has
// orientation 0.
func BandIndex(level, orientation, height, bandsPerLevel int) (int, error) {
	if height < 1 || bandsPerLevel < 1 {
		return 0, fmt.Errorf("%w: height %d, %d bands per level", ErrIndexOutOfRange, height, bandsPerLevel)
	}
	if level < 0 || level >= height {
		return 0, fmt.Errorf("%w: level %d not in [0, %d)", ErrIndexOutOfRange, level, height)
	}
	if level == height-1 {
		if orientation != 0 {
			return 0, fmt.Errorf("%w: low-pass level has no orientation %d", ErrIndexOutOfRange, orientation)
		}
		return level * bandsPerLevel, nil
	}
	if orientation < 0 || orientation >= bandsPerLevel {
		return 0, fmt.Errorf("%w: orientation %d not in [0, %d)", ErrIndexOutOfRange, orientation, bandsPerLevel)
	}
	return level*bandsPerLevel + orientation, nil
}

// LevelOrientationOf is the inverse of BandIndex.
func LevelOrientationOf(index, height, bandsPerLevel int) (level, orientation int, err error) {
	if height < 1 || bandsPerLevel < 1 {
		return 0, 0, fmt.Errorf("%w: height %d, %d bands per level", ErrIndexOutOfRange, height, bandsPerLevel)
	}
	total := NumBandsTotal(height, bandsPerLevel)
	if index < 0 || index >= total {
		return 0, 0, fmt.Errorf("%w: band %d not in [0, %d)", ErrIndexOutOfRange, index, total)
	}
	if index == total-1 {
		return height - 1, 0, nil
	}
	return index / bandsPerLevel, index % bandsPerLevel, nil
}

// NumBandsTotal returns the length of the flat band list: one low-pass band
// plus bandsPerLevel detail bands for each of the height-1 detail levels.
func NumBandsTotal(height, bandsPerLevel int) int {
	return 1 + bandsPerLevel*(height-1)
}
