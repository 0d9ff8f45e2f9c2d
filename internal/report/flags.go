package report

import (
	"net/url"
	"strconv"

	"github.com/dtnitsch/meta-auditor/pkg/audit"
	"github.com/urfave/cli/v2"
)

// QueryFlags select, filter and sort records the same way the report page
// query parameters do.
func QueryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "case-insensitive text search"},
		&cli.StringSliceFlag{Name: "type", Aliases: []string{"t"}, Usage: "content type (repeatable); defaults to the stored selection"},
		&cli.BoolFlag{Name: "missing-title", Usage: "only records without a meta title"},
		&cli.BoolFlag{Name: "missing-desc", Usage: "only records without a meta description"},
		&cli.BoolFlag{Name: "missing-kw", Usage: "only records without a keyphrase"},
		&cli.StringFlag{Name: "sort", Value: "id", Usage: "id, title, type, metaTitle, metaDesc, focusKw or modified"},
		&cli.StringFlag{Name: "order", Value: "asc", Usage: "asc or desc"},
	}
}

// QueryValues converts query flags into report query parameters.
func QueryValues(c *cli.Context) url.Values {
	v := url.Values{}
	if s := c.String("search"); s != "" {
		v.Set(audit.ParamSearch, s)
	}
	for _, t := range c.StringSlice("type") {
		v.Add(audit.ParamPostTypes, t)
	}
	toggles := map[string]string{
		"missing-title": audit.ParamMissingTitle,
		"missing-desc":  audit.ParamMissingDesc,
		"missing-kw":    audit.ParamMissingKW,
	}
	for flag, param := range toggles {
		if c.Bool(flag) {
			v.Set(param, "1")
		}
	}
	v.Set(audit.ParamSort, c.String("sort"))
	v.Set(audit.ParamOrder, c.String("order"))
	if c.IsSet("per-page") {
		v.Set(audit.ParamPerPage, strconv.Itoa(c.Int("per-page")))
	}
	if c.IsSet("page") {
		v.Set(audit.ParamPage, strconv.Itoa(c.Int("page")))
	}
	return v
}
