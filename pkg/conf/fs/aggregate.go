// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"reflect"

	"github.com/imdario/mergo"
	"github.com/wrgl/sheetmerge/pkg/conf"
	"github.com/wrgl/sheetmerge/pkg/errors"
)

type ptrTransformer struct {
}

func (t *ptrTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ.Kind() == reflect.Ptr && typ.Elem().Kind() != reflect.Struct {
		return func(dst, src reflect.Value) error {
			if dst.CanSet() && !src.IsNil() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

// aggregateConfig layers local over global over system config.
func (s *Store) aggregateConfig() (*conf.Config, error) {
	localConfig, err := s.readConfig(localPath(s.rootDir))
	if err != nil {
		return nil, err
	}
	fp, err := globalConfigPath()
	if err != nil {
		return nil, errors.WrapKind(errors.KindIO, "error locating global config", err)
	}
	globalConfig, err := s.readConfig(fp)
	if err != nil {
		return nil, err
	}
	sysConfig, err := s.readConfig(systemConfigPath())
	if err != nil {
		return nil, err
	}
	for _, layer := range []struct{ dst, src *conf.Config }{
		{globalConfig, localConfig},
		{sysConfig, globalConfig},
	} {
		if err = mergo.Merge(layer.dst, layer.src, mergo.WithOverride, mergo.WithTransformers(&ptrTransformer{})); err != nil {
			return nil, errors.WrapKind(errors.KindConfig, "error merging config", err)
		}
	}
	return sysConfig, nil
}
