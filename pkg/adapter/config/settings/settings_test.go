// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"fmt"
	"time"

	"github.com/openpark/parkweb/pkg/adapter/config/settings"
)

func ExampleDuration_UnmarshalText() {
	var d settings.Duration
	fmt.Println(d.UnmarshalText([]byte("2h30m")))
	fmt.Println(time.Duration(d))
	fmt.Println(d.UnmarshalText([]byte("not-a-duration")) != nil)
	// Output:
	// <nil>
	// 2h30m0s
	// true
}

func ExampleDuration_Marshal() {
	d := settings.Duration(2 * time.Hour)
	fmt.Println(*d.Marshal())
	d = settings.Duration(2*time.Hour + 3*time.Minute + 4*time.Second)
	fmt.Println(*d.Marshal())
	fmt.Println((*settings.Duration)(nil).Marshal())
	// Output:
	// 2h
	// 2h3m4s
	// <nil>
}

func ExampleVerifyRange() {
	newInt := func(i int) *int { return &i }
	v := newInt(5)
	fmt.Println(settings.VerifyRange(&v, newInt(1), newInt(10)), *v)
	v = newInt(0)
	fmt.Println(settings.VerifyRange(&v, newInt(1), newInt(10)), *v)
	v = newInt(15)
	fmt.Println(settings.VerifyRange(&v, newInt(1), newInt(10)), *v)
	v = nil
	fmt.Println(settings.VerifyRange(&v, newInt(1), newInt(10)))
	v = newInt(5)
	fmt.Println(settings.VerifyRange(&v, newInt(10), newInt(1)), *v)
	// Output:
	// <nil> 5
	// value is less than min 1
	// value is greater than max 10
	// <nil>
	// min is greater than max 5
}

func ExampleNil2Zero() {
	var b *bool
	settings.Nil2Zero(&b)
	fmt.Println(*b)
	t := true
	b = &t
	settings.Nil2Zero(&b)
	fmt.Println(*b)
	// Output:
	// false
	// true
}
