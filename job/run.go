package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tprint/common"
	"tprint/state"
)

// Paginate is "paginate" command: it reports number of pages.
func Paginate(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, func(ctx context.Context, j *Job, n int) error {
		fmt.Fprintf(cmd.Root().Writer, "%s: %d pages\n", j.Name(), n)
		return nil
	})
}

// Preview is "preview" command: it saves single page as preview.
func Preview(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, func(ctx context.Context, j *Job, n int) error {
		page := int(cmd.Int("page"))
		file, err := j.Preview(ctx, page, cmd.Bool("wait"))
		if err != nil {
			return err
		}
		j.log.Info("Page previewed", zap.Int("page", page), zap.Int("pages", n), zap.String("file", file))
		return nil
	})
}

// Print is "print" command: it saves every page.
func Print(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, func(ctx context.Context, j *Job, n int) error {
		files, err := j.Print(ctx)
		if err != nil {
			return err
		}
		j.log.Info("Pages printed", zap.Int("pages", n), zap.Int("files", len(files)))
		return nil
	})
}

func run(ctx context.Context, cmd *cli.Command, action func(context.Context, *Job, int) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("job")

	src := cmd.Args().Get(0)
	if len(src) > 0 {
		if src, err = filepath.Abs(src); err != nil {
			return err
		}
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if name := cmd.String("name"); len(name) > 0 {
		env.JobName = name
	}
	if cmd.IsSet("display") {
		d, err := common.ParseDisplayContent(cmd.String("display"))
		if err != nil {
			log.Warn("Unknown display mode requested, keeping configured one", zap.Stringer("display", env.DisplayMode()), zap.Error(err))
		} else {
			env.SetDisplayMode(d)
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	scale := 1.0
	if cmd.IsSet("scale") {
		scale = cmd.Float("scale")
	}
	if scale <= 0 || scale > 8 {
		return fmt.Errorf("page scale %v out of range (0, 8]", scale)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("display", env.DisplayMode()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	j, err := Open(ctx, env, src, dst, scale)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, j.Close())
	}()

	n, err := j.Paginate(ctx)
	if err != nil {
		return err
	}
	if err := action(ctx, j, n); err != nil {
		return err
	}
	if env.Rpt != nil {
		// after action, so pictures delivered by then are reflected
		if _, err := j.DumpChain(ctx); err != nil {
			log.Warn("Unable to dump flow chain", zap.Error(err))
		}
		if _, err := j.DumpLayout(ctx); err != nil {
			log.Warn("Unable to dump layout", zap.Error(err))
		}
	}
	return nil
}
