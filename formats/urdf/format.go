// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package urdf

import (
	"encoding/xml"
	"fmt"

	"cogentcore.org/xyzasset/asset"
)

// Format is the robot-description format.
type Format struct{}

func (Format) Name() string         { return "urdf" }
func (Format) Extensions() []string { return []string{"urdf"} }

// Parse parses a robot description. A robot without links has
// nothing to materialize and is reported as missing.
func (Format) Parse(data []byte, lc *asset.LoadContext) (any, error) {
	rb := &Robot{}
	if err := xml.Unmarshal(data, rb); err != nil {
		return nil, err
	}
	if len(rb.Links) == 0 {
		return nil, nil
	}
	return rb, nil
}

func (Format) Serialize(doc asset.Document) ([]byte, error) {
	rb, ok := doc.(*Robot)
	if !ok {
		return nil, fmt.Errorf("urdf: cannot serialize %T", doc)
	}
	b, err := xml.MarshalIndent(rb, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}
