// Copyright © 2023 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
)

// ResolvePath returns the location of fileName. An explicit folder wins over
// CONFIG_PATH, which wins over the config/ directory next to the binary's
// project root.
func ResolvePath(configFolderPath, fileName string) string {
	if configFolderPath != "" {
		return filepath.Join(configFolderPath, fileName)
	}
	if mounted := os.Getenv(MountConfigFilePath); mounted != "" {
		return filepath.Join(mounted, fileName)
	}
	return filepath.Join(defaultConfigFolder(), fileName)
}

func defaultConfigFolder() string {
	exe, err := os.Executable()
	if err != nil {
		return "config"
	}
	// binaries are built into _output/bin/platforms/<os>/<arch>
	root := filepath.Join(filepath.Dir(exe), "..", "..", "..", "..", "..")
	return filepath.Join(root, "config")
}
