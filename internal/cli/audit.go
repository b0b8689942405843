package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"license-audit/internal/app"
)

const defaultAllowlistFile = "license-allowlist.yml"

type auditOptions struct {
	Allowlist   string
	ProjectDir  string
	Summary     bool
	Interactive bool
	Modules     bool
	SBOMPath    string
	Accessible  bool
}

func bindAuditFlags(cmd *cobra.Command, opts *auditOptions) {
	cmd.Flags().StringVar(&opts.Allowlist, "allowlist", "", "Allowlist file (default <dir>/"+defaultAllowlistFile+")")
	cmd.Flags().StringVar(&opts.ProjectDir, "dir", ".", "Project directory")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Group modules by license and approval status")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Review unapproved licenses and update the allowlist")
	cmd.Flags().BoolVarP(&opts.Modules, "modules", "m", false, "Also review individual modules (requires -i)")
	cmd.Flags().StringVar(&opts.SBOMPath, "sbom", "", "Write an SPDX SBOM of the flattened modules")
	cmd.Flags().BoolVar(&opts.Accessible, "accessible", false, "Use plain-text prompts")

	_ = viper.BindPFlag("allowlist", cmd.Flags().Lookup("allowlist"))
	_ = viper.BindPFlag("dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("summary", cmd.Flags().Lookup("summary"))
	_ = viper.BindPFlag("interactive", cmd.Flags().Lookup("interactive"))
	_ = viper.BindPFlag("modules", cmd.Flags().Lookup("modules"))
	_ = viper.BindPFlag("sbom", cmd.Flags().Lookup("sbom"))
	_ = viper.BindPFlag("accessible", cmd.Flags().Lookup("accessible"))
}

func runAudit(ctx context.Context, cmd *cobra.Command, opts auditOptions) error {
	dir := resolveString(cmd, opts.ProjectDir, "dir", "dir")
	allowlist := allowlistPath(dir, resolveString(cmd, opts.Allowlist, "allowlist", "allowlist"))
	sbom := resolveString(cmd, opts.SBOMPath, "sbom", "sbom")
	interactive := resolveBool(cmd, opts.Interactive, "interactive", "interactive")
	modules := resolveBool(cmd, opts.Modules, "modules", "modules")
	service := newAppService(resolveBool(cmd, opts.Accessible, "accessible", "accessible"))

	if interactive {
		result, err := service.Reconcile(ctx, app.ReconcileRequest{
			ProjectDir:    dir,
			AllowlistPath: allowlist,
			ReviewModules: modules,
			SBOMPath:      sbom,
		})
		if err != nil {
			return err
		}
		printReconcile(cmd.OutOrStdout(), result)
		return nil
	}
	if modules {
		log.Ctx(ctx).Warn().Msg("--modules has no effect without --interactive")
	}

	summary := resolveBool(cmd, opts.Summary, "summary", "summary")
	result, err := service.Check(ctx, app.CheckRequest{
		ProjectDir:    dir,
		AllowlistPath: allowlist,
		Summary:       summary,
		SBOMPath:      sbom,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if result.Summary != nil {
		printSummary(out, *result.Summary)
	} else {
		printInvalid(out, result.Invalid)
	}
	if !result.Compliant() {
		return app.NonCompliantError(result.Invalid)
	}
	return nil
}

func allowlistPath(dir string, allowlist string) string {
	if strings.TrimSpace(allowlist) != "" {
		return allowlist
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return filepath.Join(dir, defaultAllowlistFile)
}

func newAppService(accessible bool) app.Service {
	return app.NewService(app.ServiceOptions{
		PackageManagerCommand: viper.GetString("package_manager.command"),
		PackageManagerArgs:    viper.GetStringSlice("package_manager.args"),
		AccessiblePrompt:      accessible,
	})
}
