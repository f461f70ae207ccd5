package marquee

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// Launcher starts the program for a selected item and blocks until it
// exits. reboot asks the frontend to quit and be restarted.
type Launcher interface {
	Run(ctx context.Context, collectionName string, item *collection.Item) (reboot bool, err error)
}

// Variables substituted in launcher executables, arguments and working
// directories.
const (
	VarItemFilepath       = "%ITEM_FILEPATH%"
	VarItemName           = "%ITEM_NAME%"
	VarItemFilename       = "%ITEM_FILENAME%"
	VarItemDirectory      = "%ITEM_DIRECTORY%"
	VarItemCollectionName = "%ITEM_COLLECTION_NAME%"
	VarRootPath           = "%RETROFE_PATH%"
	VarExecPath           = "%RETROFE_EXEC_PATH%"
)

// ExecLauncher runs the launchers.<name>.* commands from the config store:
//
//	launchers.mame.executable = /usr/bin/mame
//	launchers.mame.arguments = -rompath "%ITEM_DIRECTORY%" %ITEM_NAME%
//	launchers.mame.currentDirectory = /usr/share/mame
//	launchers.mame.reboot = false
type ExecLauncher struct {
	conf *config.Store
}

func NewExecLauncher(conf *config.Store) *ExecLauncher {
	return &ExecLauncher{conf: conf}
}

// launchCommand is a resolved launch.
type launchCommand struct {
	launcher   string
	executable string
	args       []string
	dir        string
	reboot     bool
}

// Run launches item. A failure to start is returned; the program's own
// exit status is logged only.
func (l *ExecLauncher) Run(ctx context.Context, collectionName string, item *collection.Item) (bool, error) {
	cmd, err := l.resolve(collectionName, item)
	if err != nil {
		return false, err
	}

	logger := logging.GetLogger()
	logger.Info("Launching", "launcher", cmd.launcher, "executable", cmd.executable, "args", cmd.args, "dir", cmd.dir)

	c := exec.CommandContext(ctx, cmd.executable, cmd.args...)
	c.Dir = cmd.dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Start(); err != nil {
		return false, fmt.Errorf("launch %s: %w", cmd.executable, err)
	}
	if err := c.Wait(); err != nil {
		logger.Warn("Launched program exited with an error", "executable", cmd.executable, "error", err)
	}
	logger.Info("Launch completed", "executable", cmd.executable)
	return cmd.reboot, nil
}

// launcherName is the collection's launcher, overridden per item by the
// first line of collections/<collection>/launchers/<item>.conf.
func (l *ExecLauncher) launcherName(item *collection.Item) string {
	name := ""
	owner := ""
	if item.Collection != nil {
		name = item.Collection.Launcher
		owner = item.Collection.Name
	}
	file := filepath.Join(l.conf.CollectionDir(owner), "launchers", item.Name+".conf")
	if f, err := os.Open(file); err == nil {
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				name = line
			}
		}
		f.Close()
	}
	return strings.ToLower(name)
}

func (l *ExecLauncher) resolve(collectionName string, item *collection.Item) (launchCommand, error) {
	name := l.launcherName(item)
	prefix := "launchers." + name + "."

	executable, ok := l.conf.String(prefix + "executable")
	if name == "" || !ok {
		return launchCommand{}, fmt.Errorf("%w: collection %q launcher %q", ErrNoLauncher, collectionName, name)
	}

	extensions, ok := l.conf.String("collections." + collectionName + ".list.extensions")
	if !ok {
		return launchCommand{}, fmt.Errorf("%w: no list.extensions for collection %q", ErrNoLauncher, collectionName)
	}
	extensions = strings.NewReplacer(" ", "", ".", "").Replace(extensions)

	args, ok := l.conf.String(prefix + "arguments")
	if !ok {
		return launchCommand{}, fmt.Errorf("%w: no arguments for launcher %q", ErrNoLauncher, name)
	}

	dir := l.conf.CollectionPath(collectionName)
	if item.Filepath != "" {
		dir = item.Filepath
	}

	base := item.Name
	if item.File != "" {
		base = item.File
	}
	// A missing file is allowed: merged romsets launch by name.
	path := findItemFile(dir, base, config.SplitList(extensions, ','))
	filename := ""
	if path != "" {
		filename = filepath.Base(path)
	}

	vars := strings.NewReplacer(
		VarItemFilepath, path,
		VarItemName, item.Name,
		VarItemFilename, filename,
		VarItemDirectory, dir,
		VarItemCollectionName, collectionName,
		VarRootPath, l.conf.AbsolutePath(),
		VarExecPath, filepath.Join(l.conf.AbsolutePath(), "marquee"),
	)

	argv, err := splitArgs(args, vars)
	if err != nil {
		return launchCommand{}, fmt.Errorf("launcher %q arguments: %w", name, err)
	}
	executable = vars.Replace(executable)
	workDir := l.conf.StringOr(prefix+"currentDirectory", filepath.Dir(executable))

	return launchCommand{
		launcher:   name,
		executable: executable,
		args:       argv,
		dir:        vars.Replace(workDir),
		reboot:     l.conf.BoolOr(prefix+"reboot", false),
	}, nil
}

// findItemFile returns the first dir/base.ext that exists, or the empty
// string.
func findItemFile(dir, base string, extensions []string) string {
	logger := logging.GetInternalLogger()
	for _, ext := range extensions {
		candidate := filepath.Join(dir, base+"."+ext)
		if _, err := os.Stat(candidate); err == nil {
			logger.Info("Found item file", "path", candidate)
			return candidate
		}
		logger.Debug("Item file not found", "path", candidate)
	}
	return ""
}

// splitArgs splits a launcher argument line with shell quoting rules and
// substitutes vars in each word, so a substituted path is always one
// argument however it is spelled.
func splitArgs(line string, vars *strings.Replacer) ([]string, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(words))
	for _, w := range words {
		args = append(args, vars.Replace(w))
	}
	return args, nil
}
