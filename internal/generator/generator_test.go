package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qed42/twig-sdc-yaml-generator/internal/annotate"
	"github.com/qed42/twig-sdc-yaml-generator/internal/discovery"
	"github.com/qed42/twig-sdc-yaml-generator/internal/engine"
	"github.com/qed42/twig-sdc-yaml-generator/internal/vocab"
)

const tagListTwig = `{#
/**
 * @file
 * Tag list.
 *
 * Available variables:
 * - title: [string] Heading shown above the tags
 * - tags: [array] Tags to show
 * - theme: [string] the visual theme, optional.
 * - is_compact: [boolean] Render a condensed list
 * - footer: [string] Footer slot
 */
#}
{% set theme = theme ?? 'light' %}
<div>
  {% if title %}<h2>{{ title }}</h2>{% endif %}
  {% for tag in tags %}
    {% include '@molecules/tag/tag.twig' with {label: tag.label, url: tag.url} only %}
  {% endfor %}
</div>
`

const tagTwig = `{#
 * - label: [string] the tag label
 * - url: [string] Link target
 * - icon: [string] unused
#}
<a href="{{ url }}">{{ label }}</a>
`

const tagListYAML = `name: Tag list
status: experimental
group: Organisms

props:
  type: object
  required:
    - tags
  properties:
    title:
      type: string
      title: Title
      description: Heading shown above the tags

    tags:
      type: array
      title: Tags
      description: Tags to show
      items:
        type: object
        properties:
          label:
            type: string
            title: Label
            description: the tag label
          url:
            type: string
            title: Url
            description: Link target

    theme:
      type: string
      title: Theme
      description: the visual theme, optional.
      enum:
        - light
        - dark

    is_compact:
      type: boolean
      title: Render a condensed list

slots:
  footer:
    title: Footer
    description: Footer slot

libraryOverrides:
  js:
    tag-list.js: {}
`

func fixture(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/c/03-organisms/tag-list/tag-list.twig":         tagListTwig,
		"/c/03-organisms/tag-list/tag-list.js":           "// behaviors",
		"/c/03-organisms/tag-list/tag-list.stories.twig": "{# * - nope: [string] x #}",
		"/c/02-molecules/tag/tag.twig":                   tagTwig,
	}
	for path, text := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(text), 0o644))
	}
	return fs
}

func newGenerator(fs afero.Fs, opts Options) *Generator {
	finder := discovery.NewFinder(fs, discovery.Options{
		Root:    "/c",
		Exclude: []string{"**/*.stories.twig"},
	})
	v := vocab.New(map[string]vocab.Entry{"theme": {Values: []string{"light", "dark"}}})
	enricher := annotate.New(annotate.Options{Vocabulary: v}, zerolog.Nop())
	eng := engine.New(engine.Options{Status: "experimental"}, enricher, finder, zerolog.Nop())
	return New(fs, finder, eng, opts, zerolog.Nop())
}

func TestRunWritesSchemas(t *testing.T) {
	fs := fixture(t)
	report, err := newGenerator(fs, Options{Jobs: 2}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Empty(t, report.Failed())
	assert.Equal(t, 2, report.Count(StatusCreated))

	data, err := afero.ReadFile(fs, "/c/03-organisms/tag-list/tag-list.component.yml")
	require.NoError(t, err)
	assert.Equal(t, tagListYAML, string(data))

	exists, err := afero.Exists(fs, "/c/03-organisms/tag-list/README.md")
	require.NoError(t, err)
	assert.False(t, exists, "readme disabled")
}

func TestRunIsIdempotent(t *testing.T) {
	fs := fixture(t)
	_, err := newGenerator(fs, Options{Readme: true}).Run(context.Background())
	require.NoError(t, err)
	first, err := afero.ReadFile(fs, "/c/03-organisms/tag-list/tag-list.component.yml")
	require.NoError(t, err)

	report, err := newGenerator(fs, Options{Readme: true, Jobs: 4}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Count(StatusUnchanged))

	second, err := afero.ReadFile(fs, "/c/03-organisms/tag-list/tag-list.component.yml")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRunCheckReportsDrift(t *testing.T) {
	fs := fixture(t)
	_, err := newGenerator(fs, Options{}).Run(context.Background())
	require.NoError(t, err)

	report, err := newGenerator(fs, Options{Mode: ModeCheck}).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Count(StatusDrift))

	path := "/c/02-molecules/tag/tag.component.yml"
	require.NoError(t, afero.WriteFile(fs, path, []byte("name: Old tag\n"), 0o644))

	report, err = newGenerator(fs, Options{Mode: ModeCheck}).Run(context.Background())
	assert.True(t, errors.Is(err, ErrDrift))
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Count(StatusDrift))

	var drift File
	for _, res := range report.Results {
		for _, f := range res.Files {
			if f.Status == StatusDrift {
				drift = f
			}
		}
	}
	assert.Equal(t, path, drift.Path)
	assert.Contains(t, drift.Diff, "-name: Old tag\n")
	assert.Contains(t, drift.Diff, "+name: Tag\n")
	assert.False(t, drift.Cosmetic)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "name: Old tag\n", string(data), "check mode never writes")
}

func TestRunCosmeticDrift(t *testing.T) {
	fs := fixture(t)
	_, err := newGenerator(fs, Options{}).Run(context.Background())
	require.NoError(t, err)

	path := "/c/02-molecules/tag/tag.component.yml"
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, path, append(data, '\n'), 0o644))

	report, err := newGenerator(fs, Options{Mode: ModeCheck}).Run(context.Background())
	require.ErrorIs(t, err, ErrDrift)
	for _, res := range report.Results {
		for _, f := range res.Files {
			if f.Path == path {
				assert.True(t, f.Cosmetic)
			}
		}
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	fs := fixture(t)
	var seen []string
	report, err := newGenerator(fs, Options{Mode: ModeDryRun, Readme: true, OnResult: func(r Result) {
		seen = append(seen, r.Template.MachineName)
	}}).Run(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tag", "tag-list"}, seen)
	assert.Equal(t, 4, report.Count(StatusCreated))

	exists, err := afero.Exists(fs, "/c/02-molecules/tag/tag.component.yml")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newGenerator(fixture(t), Options{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMissingRoot(t *testing.T) {
	_, err := newGenerator(afero.NewMemMapFs(), Options{}).Run(context.Background())
	assert.Error(t, err)
}

func TestRunSharedDirectoryReadmes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c/card/card.twig", []byte(tagTwig), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/c/card/card-item.twig", []byte(tagListTwig), 0o644))

	for _, jobs := range []int{1, 4} {
		_, err := newGenerator(fs, Options{Readme: true, Jobs: jobs}).Run(context.Background())
		require.NoError(t, err)
	}

	report, err := newGenerator(fs, Options{Mode: ModeCheck, Readme: true}).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Count(StatusDrift))
	assert.Equal(t, 4, report.Count(StatusUnchanged))

	card, err := afero.ReadFile(fs, "/c/card/README.md")
	require.NoError(t, err)
	assert.Contains(t, string(card), "# Card")
	item, err := afero.ReadFile(fs, "/c/card/card-item.README.md")
	require.NoError(t, err)
	assert.Contains(t, string(item), "# Card item")
}
