// provolx/services/migrate/migrate.go
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"provolx/provolx/utils/logging"
)

const (
	NewServiceURL = "http://localhost:8001"
	oldServiceURL = "http://localhost:3001"

	serviceDir = "ai-service"
	backupDir  = "ai-service-backup"
)

var ErrBackupExists = errors.New("backup directory already exists")

// envRewrites maps a project-relative .env file to the variable whose old
// service URL gets replaced.
var envRewrites = []struct {
	path string
	key  string
}{
	{filepath.Join("backend", ".env"), "AI_SERVICE_URL"},
	{filepath.Join("frontend", ".env"), "VITE_AI_SERVICE_URL"},
}

// Report lists what Run actually changed, in order.
type Report struct {
	Steps []string `json:"steps"`
}

func (r *Report) add(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Steps = append(r.Steps, msg)
	logging.AppLogger.Info("migration step", zap.String("step", msg))
}

// Run moves a project rooted at root over to the new AI service: it backs up
// the old service directory, then points package.json and the .env files at port 8001.
func Run(root string) (Report, error) {
	var report Report

	if err := backupService(root, &report); err != nil {
		return report, err
	}
	if err := updatePackageJSON(root, &report); err != nil {
		return report, err
	}
	for _, env := range envRewrites {
		if err := updateEnvFile(root, env.path, env.key, &report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func backupService(root string, report *Report) error {
	src := filepath.Join(root, serviceDir)
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		report.add("No old AI service found to backup")
		return nil
	}
	dst := filepath.Join(root, backupDir)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, dst)
	}
	if err := copyTree(src, dst); err != nil {
		return fmt.Errorf("backup %s: %w", src, err)
	}
	report.add("Backup created as '%s'", backupDir)
	return nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// updatePackageJSON only rewrites config.aiServiceUrl when the key is already present.
func updatePackageJSON(root string, report *Report) error {
	path := filepath.Join(root, "frontend", "package.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var pkg map[string]interface{}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	cfg, ok := pkg["config"].(map[string]interface{})
	if !ok {
		return nil
	}
	if _, ok := cfg["aiServiceUrl"]; !ok {
		return nil
	}
	cfg["aiServiceUrl"] = NewServiceURL

	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return err
	}
	report.add("Updated frontend package.json to point to new AI service")
	return nil
}

func updateEnvFile(root, rel, key string, report *Report) error {
	path := filepath.Join(root, rel)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	updated := strings.ReplaceAll(string(data), key+"="+oldServiceURL, key+"="+NewServiceURL)
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return err
	}
	report.add("Updated %s file", rel)
	return nil
}

// NextSteps is printed after a successful migration.
const NextSteps = `Next steps:
1. Start the new AI service:
   provolx

2. Verify the service is running:
   curl http://localhost:8001/health

3. Start your backend and frontend services as usual:
   cd backend && npm run dev
   cd frontend && npm run dev

4. Test the AI functionality through the frontend interface`
