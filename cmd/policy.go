package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/resonate/internal/repositories"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/urfave/cli/v3"
)

func policyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "policy",
		Usage: "Publish a new privacy policy revision",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to a file containing the policy text",
			},
		},
		Action: r.PublishPolicy,
	}
}

// PublishPolicy appends a new privacy-policy revision from a text file.
// Earlier revisions stay in place; the API serves the newest one.
func (r *Runner) PublishPolicy(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	if path == "" {
		return fmt.Errorf("%w: --file is required", shared.ErrMissingArgument)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: policy file is empty", shared.ErrInvalidInput)
	}

	db, err := shared.NewDatabase(ctx, r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	policy, err := repositories.NewPolicyRepository(db).Create(ctx, string(body))
	if err != nil {
		return fmt.Errorf("failed to publish policy: %w", err)
	}

	r.logger.Info("policy published", "revision", policy.ID)
	fmt.Fprintf(r.output, "published privacy policy revision %d\n", policy.ID)
	return nil
}
