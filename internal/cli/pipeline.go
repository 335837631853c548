package cli

import (
	"github.com/spf13/afero"

	"github.com/qed42/twig-sdc-yaml-generator/internal/annotate"
	"github.com/qed42/twig-sdc-yaml-generator/internal/config"
	"github.com/qed42/twig-sdc-yaml-generator/internal/discovery"
	"github.com/qed42/twig-sdc-yaml-generator/internal/engine"
	"github.com/qed42/twig-sdc-yaml-generator/internal/generator"
	"github.com/qed42/twig-sdc-yaml-generator/internal/logging"
	"github.com/qed42/twig-sdc-yaml-generator/internal/vocab"
)

// loadVocabulary resolves the vocabulary for cfg relative to the working
// directory.
func loadVocabulary(cfg *config.Config) (*vocab.Vocabulary, error) {
	wd, err := workDirFunc()
	if err != nil {
		return nil, err
	}
	return vocab.Resolve(appFs, cfg.VocabularyFile, wd)
}

// newGenerator wires discovery, the engine and the generator from cfg.
func newGenerator(cfg *config.Config, opts generator.Options) (*generator.Generator, *vocab.Vocabulary, error) {
	v, err := loadVocabulary(cfg)
	if err != nil {
		return nil, nil, err
	}

	finder := discovery.NewFinder(appFs, discovery.Options{
		Root:        cfg.Root,
		IncludeRoot: cfg.IncludeRoot,
		Exclude:     cfg.Exclude,
		Classifier:  discovery.NewClassifier(cfg.Groups, cfg.DefaultGroup),
	})
	enricher := annotate.New(annotate.Options{
		Vocabulary:       v,
		EnumFirstDefault: cfg.EnumFirstDefault,
	}, logging.Component("annotate"))
	eng := engine.New(engine.Options{
		Status:          cfg.Status,
		SchemaURL:       cfg.SchemaURL,
		MaxIncludeDepth: cfg.MaxIncludeDepth,
	}, enricher, finder, logging.Component("engine"))

	if opts.Jobs == 0 {
		opts.Jobs = cfg.Jobs
	}
	return generator.New(appFs, finder, eng, opts, logging.Component("generator")), v, nil
}

func existsOnFs(path string) (bool, error) {
	return afero.Exists(appFs, path)
}
