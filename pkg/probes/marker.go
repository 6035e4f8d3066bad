//go:build !noprobes
// +build !noprobes

package probes

// frameMarkerInfo is the metadata captured for one probe firing. It lives on
// the dispatcher's stack for the duration of a single hook invocation and is
// released before the hook returns; nothing here escapes that scope.
//
// filenameRepr and funcnameRepr own the encoded bytes; filename and funcname
// are the borrowed views handed to handlers, valid only until release.
type frameMarkerInfo struct {
	filenameRepr []byte
	funcnameRepr []byte
	filename     []byte
	funcname     []byte
	line         int
}

// captureFrameMarker reads the frame through its narrow capability interface
// and produces encoded metadata. Encoding failures degrade to nil fields and
// any pending error state the encoders set is discarded: the thread's error
// state is identical before and after this call, whatever happens inside.
func captureFrameMarker(t Thread, f Frame) frameMarkerInfo {
	guard := preservePendingError(t)
	defer guard.restore()

	var fmi frameMarkerInfo

	fmi.filenameRepr = encodeFSDefault(t, f.Filename())
	if fmi.filenameRepr != nil {
		fmi.filename = fmi.filenameRepr
	}

	fmi.funcnameRepr = encodeUTF8(t, f.FuncName())
	if fmi.funcnameRepr != nil {
		fmi.funcname = fmi.funcnameRepr
	}

	fmi.line = f.CurrentLine()

	return fmi
}

// release drops the owned representations. Handlers must not retain the
// borrowed views past the firing that delivered them.
func (fmi *frameMarkerInfo) release() {
	fmi.filenameRepr = nil
	fmi.funcnameRepr = nil
	fmi.filename = nil
	fmi.funcname = nil
}
