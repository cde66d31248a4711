// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf_test

import (
	"fmt"

	"github.com/dalzilio/adfobdd/adf"
)

// Example_mutualAttack builds the two-statement framework where a attacks b
// and b attacks a, then prints its grounded interpretation and both stable
// models.
func Example_mutualAttack() {
	a, err := adf.New([]adf.Declaration{
		{Name: "a", AC: adf.ExprNeg{E: adf.ExprVar{Name: "b"}}},
		{Name: "b", AC: adf.ExprNeg{E: adf.ExprVar{Name: "a"}}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	grounded := a.Grounded()
	fmt.Printf("grounded: a=%s b=%s\n", grounded[0], grounded[1])
	a.StableNaive(func(m adf.TwoValued) error {
		fmt.Printf("stable: a=%v b=%v\n", m[0], m[1])
		return nil
	})
	// Output:
	// grounded: a=u b=u
	// stable: a=true b=false
	// stable: a=false b=true
}
