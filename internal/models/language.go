// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ParseLanguage validates a locale code and returns it in the provider's
// underscore form. Both "pt-BR" and "pt_BR" yield "pt_BR"; a bare language
// such as "de" stays "de".
func ParseLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("language code is empty")
	}

	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", code, err)
	}

	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf != language.Exact {
		return base.String(), nil
	}
	return base.String() + "_" + region.String(), nil
}
