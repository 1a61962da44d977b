// Package regions supplies the canonical county list.
//
// The built-in list is the 105 Kansas counties in the order the contact
// directory presents them. A deployment can replace it with a YAML or JSON
// file, either a bare list or an object with a "regions" key:
//
//	regions:
//	  - Johnson
//	  - Sedgwick
package regions

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"sigs.k8s.io/yaml"
)

// Kansas is the default canonical list. Names omit the "County" suffix.
var Kansas = []string{
	"Johnson", "Sedgwick", "Wyandotte", "Shawnee", "Douglas", "Leavenworth", "Riley", "Reno",
	"Butler", "Crawford", "Saline", "Harvey", "Lyon", "Miami", "Finney", "Cowley", "Geary", "Ford",
	"Ellis", "Montgomery", "Franklin", "McPherson", "Cherokee", "Jefferson", "Labette", "Pottawatomie",
	"Sumner", "Seward", "Atchison", "Barton", "Osage", "Neosho", "Jackson", "Bourbon", "Dickinson",
	"Allen", "Marshall", "Marion", "Nemaha", "Brown", "Linn", "Anderson", "Coffey", "Wabaunsee", "Pratt",
	"Rice", "Cloud", "Kingman", "Ellsworth", "Clay", "Doniphan", "Morris", "Wilson", "Russell", "Thomas",
	"Greenwood", "Pawnee", "Grant", "Harper", "Mitchell", "Gray", "Ottawa", "Republic", "Sherman", "Meade",
	"Rooks", "Barber", "Trego", "Norton", "Osborne", "Washington", "Stafford", "Smith", "Chase", "Kearny",
	"Phillips", "Stevens", "Edwards", "Scott", "Rush", "Morton", "Lincoln", "Haskell", "Woodson", "Chautauqua",
	"Decatur", "Clark", "Ness", "Gove", "Cheyenne", "Elk", "Graham", "Jewell", "Rawlins", "Sheridan",
	"Hamilton", "Logan", "Stanton", "Hodgeman", "Kiowa", "Comanche", "Wichita", "Lane", "Wallace", "Greeley",
}

// Default returns the built-in region universe.
func Default() core.Regions {
	return core.MustRegions(Kansas)
}

// Load returns the built-in list when path is empty, otherwise the list
// read from path.
func Load(path string) (core.Regions, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return core.Regions{}, fmt.Errorf("read regions file: %w", err)
	}

	keys, err := Parse(b)
	if err != nil {
		return core.Regions{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return core.NewRegions(keys)
}

// Parse decodes a YAML or JSON region list.
func Parse(b []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(b, &list); err == nil {
		return list, nil
	}

	var doc struct {
		Regions []string `json:"regions"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc.Regions, nil
}
