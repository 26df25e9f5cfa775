package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/duckdb"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/effect"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genome"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/haplotype"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/output"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

type generateOptions struct {
	genomePath    string
	geneModelPath string
	vcfPath       string
	outputPath    string
	dbPath        string
	selenoPath    string
	organism      string
	workers       int
	maxHet        int
	flankLength   int64
	verbose       bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a proteoform database from a genome, gene model, and VCF",
		Example: `  # Write a proteoform FASTA from sample variant calls
  proteoformdb generate --genome GRCh38.fa --gene-model gencode.gtf --vcf sample.vcf -o proteoforms.fasta

  # Also persist proteoforms to DuckDB for querying
  proteoformdb generate --genome GRCh38.fa --gene-model gencode.gff3 --vcf sample.vcf.gz -o out.fasta --db proteoforms.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Persisted config fills in flags the caller omitted.
			if opts.organism == "" {
				opts.organism = viper.GetString("organism")
			}
			if !cmd.Flags().Changed("workers") && viper.IsSet("workers") {
				opts.workers = viper.GetInt("workers")
			}
			if !cmd.Flags().Changed("flank-length") && viper.IsSet("flank-length") {
				opts.flankLength = viper.GetInt64("flank-length")
			}
			if !cmd.Flags().Changed("max-heterozygous") && viper.IsSet("max-heterozygous") {
				opts.maxHet = viper.GetInt("max-heterozygous")
			}
			return runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.genomePath, "genome", "", "Reference genome FASTA (plain, gz, zst, or lz4)")
	cmd.Flags().StringVar(&opts.geneModelPath, "gene-model", "", "Gene model GTF or GFF3 file")
	cmd.Flags().StringVar(&opts.vcfPath, "vcf", "", "Variant calls in VCF format (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "-", "Output proteoform FASTA (\"-\" for stdout)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Optional DuckDB database to persist proteoforms")
	cmd.Flags().StringVar(&opts.selenoPath, "selenoproteins", "", "Curated selenoprotein FASTA for stop recoding")
	cmd.Flags().StringVar(&opts.organism, "organism", "", "Organism recorded on proteoform entries")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Worker count (0 = number of CPUs)")
	cmd.Flags().IntVar(&opts.maxHet, "max-heterozygous", haplotype.DefaultMaxHeterozygous, "Heterozygous variant cap per transcript")
	cmd.Flags().Int64Var(&opts.flankLength, "flank-length", genemodel.DefaultFlankLength, "Upstream/downstream flank size in bases")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.MarkFlagRequired("genome")
	cmd.MarkFlagRequired("gene-model")
	cmd.MarkFlagRequired("vcf")

	return cmd
}

func runGenerate(ctx context.Context, opts *generateOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("loading reference genome", zap.String("path", opts.genomePath))
	g, err := genome.NewFASTALoader(opts.genomePath).Load()
	if err != nil {
		return fmt.Errorf("load genome: %w", err)
	}
	logger.Info("genome loaded", zap.Int("chromosomes", g.Len()))

	logger.Info("loading gene model", zap.String("path", opts.geneModelPath))
	builder := genemodel.NewBuilder(g, logger)
	builder.SetFlankLength(opts.flankLength)
	if err := genemodel.NewLoader(opts.geneModelPath, logger).Load(builder); err != nil {
		return fmt.Errorf("load gene model: %w", err)
	}
	model, err := builder.Finish()
	if err != nil {
		return fmt.Errorf("build gene model: %w", err)
	}
	logger.Info("gene model built",
		zap.Int("genes", len(model.Genes)),
		zap.Int("transcripts", len(model.Transcripts())),
		zap.Int("intergenics", len(model.Intergenics)))

	logger.Info("reading variants", zap.String("path", opts.vcfPath))
	parser, err := variant.NewParser(opts.vcfPath)
	if err != nil {
		return fmt.Errorf("open vcf: %w", err)
	}
	variants, err := parser.All()
	parser.Close()
	if err != nil {
		return fmt.Errorf("parse vcf: %w", err)
	}

	attached, err := model.AttachVariants(variants)
	if err != nil {
		return fmt.Errorf("attach variants: %w", err)
	}
	logger.Info("variants attached",
		zap.Int("total", len(variants)),
		zap.Int("on_features", attached))

	expander := haplotype.NewExpander(effect.NewClassifier(logger), logger)
	expander.SetOrganism(opts.organism)
	expander.SetMaxHeterozygous(opts.maxHet)
	if opts.selenoPath != "" {
		seleno, err := haplotype.LoadSelenoproteins(opts.selenoPath)
		if err != nil {
			return fmt.Errorf("load selenoproteins: %w", err)
		}
		expander.SetSelenoproteins(seleno)
		logger.Info("selenoproteins loaded", zap.Int("count", len(seleno)))
	}

	pairs, err := expander.ExpandAll(ctx, model, opts.workers)
	if err != nil {
		return fmt.Errorf("expand haplotypes: %w", err)
	}
	if overflows := expander.Overflows(); len(overflows) > 0 {
		logger.Warn("transcripts over the heterozygous cap emitted unmodified",
			zap.Int("count", len(overflows)))
	}
	logger.Info("proteoforms generated", zap.Int("count", len(pairs)))

	if err := writeFASTA(opts.outputPath, pairs); err != nil {
		return err
	}

	if opts.dbPath != "" {
		store, err := duckdb.Open(opts.dbPath)
		if err != nil {
			return fmt.Errorf("open proteoform database: %w", err)
		}
		defer store.Close()
		if err := store.WriteProteoforms(pairs); err != nil {
			return fmt.Errorf("write proteoform database: %w", err)
		}
		logger.Info("proteoforms persisted", zap.String("path", opts.dbPath))
	}

	return nil
}

func writeFASTA(path string, pairs []haplotype.Pair) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	proteins := make([]*haplotype.Protein, 0, len(pairs))
	for _, p := range pairs {
		proteins = append(proteins, p.Protein)
	}
	if err := output.NewFASTAWriter(w).WriteAll(proteins); err != nil {
		return fmt.Errorf("write proteoforms: %w", err)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}
