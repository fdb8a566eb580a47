package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/memory"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Tool is an external program the gallery shells out to.
type Tool struct {
	Name        string
	VersionArgs []string
	// NeededFor describes which files cannot be processed without it.
	NeededFor string
}

// Tools lists the external programs checked at startup.
var Tools = []Tool{
	{Name: "exiftool", VersionArgs: []string{"-ver"}, NeededFor: "image metadata stripping"},
	{Name: "ffmpeg", VersionArgs: []string{"-version"}, NeededFor: "video thumbnails"},
	{Name: "ffprobe", VersionArgs: []string{"-version"}, NeededFor: "video dimensions"},
}

// toolTimeout bounds each version probe.
var toolTimeout = 5 * time.Second

// CheckTool looks name up in PATH and runs it with versionArgs. It returns
// the first line of the version output.
func CheckTool(name string, versionArgs ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", name)
	}
	logging.Debug("  %s path: %s", name, path)

	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, versionArgs...).Output()
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", name, err)
	}

	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line), nil
}

// LogToolChecks reports the availability of every external tool. A missing
// tool is not fatal: only the files that need it will fail.
func LogToolChecks() map[string]bool {
	logging.Info("------------------------------------------------------------")
	logging.Info("EXTERNAL TOOLS")
	logging.Info("------------------------------------------------------------")

	available := make(map[string]bool, len(Tools))
	for _, tool := range Tools {
		version, err := CheckTool(tool.Name, tool.VersionArgs...)
		if err != nil {
			logging.Warn("  %s check failed: %v", tool.Name, err)
			logging.Warn("  %s will fail", tool.NeededFor)
			continue
		}
		available[tool.Name] = true
		logging.Info("  [OK] %s is available (%s)", tool.Name, version)
	}
	logging.Info("")
	return available
}

// LogVipsInit reports whether libvips is used for decoding.
func LogVipsInit(enabled bool, err error) {
	switch {
	case !enabled:
		logging.Info("  libvips disabled, images are decoded with the imaging library")
	case err != nil:
		logging.Warn("  libvips initialization failed: %v", err)
		logging.Warn("  falling back to the imaging library")
	default:
		logging.Info("  [OK] libvips enabled for decode-time shrinking")
	}
}

// LogMemoryConfig logs the GOMEMLIMIT configuration result.
func LogMemoryConfig(result memory.ConfigResult) {
	switch result.Source {
	case memory.SourceGOMEMLIMIT:
		logging.Info("  Memory limit:    %s (GOMEMLIMIT)", memory.FormatBytes(result.GoMemLimit))
	case memory.SourceMemoryLimit:
		logging.Info("  Memory limit:    %s (%.0f%% of %s)",
			memory.FormatBytes(result.GoMemLimit), result.Ratio*100, memory.FormatBytes(result.ContainerLimit))
	default:
		logging.Debug("  Memory limit:    not configured")
	}
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// prefix handlers such as file servers have no method matcher
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs the preview server routes at debug level.
func LogHTTPRoutes(router *mux.Router) {
	logging.Info("------------------------------------------------------------")
	logging.Info("PREVIEW SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if !logging.IsDebugEnabled() {
		return
	}

	routes, err := GetRoutes(router)
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}

	groups := make(map[string][]RouteInfo)
	for _, route := range routes {
		groups[getRouteGroup(route.Path)] = append(groups[getRouteGroup(route.Path)], route)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logging.Debug("  Registered routes (%d total):", len(routes))
	for _, group := range keys {
		if group == "" {
			logging.Debug("  [root]")
		} else {
			logging.Debug("  [%s]", group)
		}
		for _, route := range groups[group] {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}
}

// getRouteGroup returns the first path segment of a route.
func getRouteGroup(path string) string {
	first, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return first
}

// LogServerStarted logs the preview server endpoints.
func LogServerStarted(addr string, startup time.Duration) {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", startup)
	logging.Info("  Galleries:       http://%s/galleries/", host)
	logging.Info("  Metrics:         http://%s/metrics", host)
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(reason string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (%s)", reason)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

func printBanner() {
	banner := `
------------------------------------------------------------
    __  ___         ___         ______      ____
   /  |/  /__  ____/ (_)___ _  / ____/___ _/ / /__  _______  __
  / /|_/ / _ \/ __  / / __ '/ / / __/ __ '/ / / _ \/ ___/ / / /
 / /  / /  __/ /_/ / / /_/ / / /_/ / /_/ / / /  __/ /  / /_/ /
/_/  /_/\___/\__,_/_/\__,_/  \____/\__,_/_/_/\___/_/   \__, /
                                                      /____/
------------------------------------------------------------`
	fmt.Fprintln(os.Stderr, banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}
