/*
Copyright © 2026 the ChemRad authors.
This file is part of ChemRad.

ChemRad is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemRad is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemRad.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command chemrad is a command-line interface for the ChemRad
// interstellar chemistry and radiation engine.
package main

import (
	"os"

	"github.com/ismmodel/chemrad/chemradutil"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := chemradutil.Root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
