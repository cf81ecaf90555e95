// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"reflect"

	"cogentcore.org/xyzasset/asset"
	"github.com/Masterminds/semver/v3"
	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
)

// Version is the container version written by this package.
const Version = "1.0"

// JSON is the text format of model containers. Comments and trailing
// commas are allowed when reading.
type JSON struct{}

func (JSON) Name() string         { return "model" }
func (JSON) Extensions() []string { return []string{"model"} }

func (JSON) Parse(data []byte, lc *asset.LoadContext) (any, error) {
	md := &Model{}
	if err := json.Unmarshal(jsonc.ToJSON(data), md); err != nil {
		return nil, err
	}
	return finish(md, lc)
}

func (JSON) Serialize(doc asset.Document) ([]byte, error) {
	md, err := asModel(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(md, "", "\t")
}

// Binary is the CBOR format of model containers.
type Binary struct{}

func (Binary) Name() string         { return "modelb" }
func (Binary) Extensions() []string { return []string{"modelb"} }

func (Binary) Parse(data []byte, lc *asset.LoadContext) (any, error) {
	md := &Model{}
	if err := decMode.Unmarshal(data, md); err != nil {
		return nil, err
	}
	return finish(md, lc)
}

func (Binary) Serialize(doc asset.Document) ([]byte, error) {
	md, err := asModel(doc)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(md)
}

// encMode uses Core Deterministic Encoding, so the same model always
// produces identical bytes.
var encMode cbor.EncMode

// decMode decodes free-form extras into map[string]any.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("model: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("model: CBOR decoder initialization failed: " + err.Error())
	}
}

// finish links a decoded model. A model without nodes has nothing to
// materialize and is reported as missing.
func finish(md *Model, lc *asset.LoadContext) (any, error) {
	if err := checkVersion(md.Asset.Version); err != nil {
		return nil, err
	}
	if len(md.Nodes) == 0 {
		return nil, nil
	}
	if err := md.link(lc); err != nil {
		return nil, err
	}
	return md, nil
}

// checkVersion accepts containers with the major version of [Version].
// An empty version is accepted.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("model: invalid version %q: %w", v, err)
	}
	if sv.Major() != semver.MustParse(Version).Major() {
		return fmt.Errorf("model: unsupported version %s, want %s", v, Version)
	}
	return nil
}

func asModel(doc asset.Document) (*Model, error) {
	md, ok := doc.(*Model)
	if !ok {
		return nil, fmt.Errorf("model: cannot serialize %T", doc)
	}
	return md, nil
}
