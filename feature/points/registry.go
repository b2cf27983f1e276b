package points

import (
	"postcard-gallery/core/reconcile"
	"postcard-gallery/core/utils"
)

// LoadRegistry reads the registry at path. A missing file is an empty registry.
func LoadRegistry(path string) ([]reconcile.TravelPoint, error) {
	var points []reconcile.TravelPoint
	if _, err := utils.ReadJSONFile(path, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []reconcile.TravelPoint{}
	}
	return points, nil
}

// SaveRegistry atomically replaces the registry at path.
func SaveRegistry(path string, points []reconcile.TravelPoint) error {
	if points == nil {
		points = []reconcile.TravelPoint{}
	}
	return utils.WriteJSONFile(path, points)
}
