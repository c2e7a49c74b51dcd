// Copyright © 2019 Erin Shepherd
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

package cmd

import (
	"fmt"

	"github.com/erincandescent/unbit/xilinx"
	"github.com/spf13/cobra"
)

var substituteBRAMsCmd = &cobra.Command{
	Use:   "substitute-brams <golden-readback.rbd> <new-readback.rbd> <out.rbd>",
	Short: "Copy every block RAM tile's contents from one readback onto another",
	Long: `Reads two readback captures of the same device, extracts every
known BRAM tile's data and parity bits from the second, and injects them
into the first's frame data at the matching tile locations, leaving
everything else (routing, LUT configuration) from the first capture
untouched.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseData, err := readFile(args[0])
		if err != nil {
			return err
		}
		overlayData, err := readFile(args[1])
		if err != nil {
			return err
		}

		base, err := xilinx.LoadReadback(baseData)
		if err != nil {
			return err
		}
		overlay, err := xilinx.LoadReadback(overlayData)
		if err != nil {
			return err
		}

		if len(base.SLRs()) != len(overlay.SLRs()) {
			return fmt.Errorf("substitute-brams: SLR count mismatch (%d vs %d)", len(base.SLRs()), len(overlay.SLRs()))
		}

		for slrIdx := range base.SLRs() {
			device, err := base.DeviceForSLR(slrIdx)
			if err != nil {
				return err
			}
			baseFD, err := base.FrameData(slrIdx)
			if err != nil {
				return err
			}
			overlayFD, err := overlay.FrameData(slrIdx)
			if err != nil {
				return err
			}

			for _, cat := range []xilinx.BRAMCategory{xilinx.CategoryRAMB36, xilinx.CategoryRAMB18} {
				for _, ram := range device.BRAMs(cat) {
					if err := copyOneBRAM(ram, overlayFD, baseFD); err != nil {
						return err
					}
				}
			}
		}

		return writeFile(args[2], base.Bytes())
	},
}

func copyOneBRAM(ram xilinx.BRAM, src, dst *xilinx.FrameData) error {
	data, err := xilinx.ExtractBits(ram, src, false)
	if err != nil {
		return err
	}
	if err := xilinx.InjectBits(ram, dst, false, data); err != nil {
		return err
	}

	parity, err := xilinx.ExtractBits(ram, src, true)
	if err != nil {
		return err
	}
	return xilinx.InjectBits(ram, dst, true, parity)
}

func init() {
	rootCmd.AddCommand(substituteBRAMsCmd)
}
