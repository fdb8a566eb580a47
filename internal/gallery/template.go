package gallery

import (
	"html/template"
)

// ItemWidth is the CSS width of one grid item in pixels.
const ItemWidth = 210

// ColumnWidth is the masonry column width, item plus gutter.
const ColumnWidth = 230

var pageTemplate = template.Must(template.New("index.html").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <link rel="stylesheet" href="{{.Assets}}/css/photoswipe/photoswipe.css">
    <script src="{{.Assets}}/js/imagesloaded/imagesloaded.pkgd.min.js"></script>
    <script src="{{.Assets}}/js/masonry/masonry.pkgd.min.js"></script>
    <style>
      .grid-item {
        width: {{.ItemWidth}}px;
        margin-bottom: 20px;
      }
    </style>
  </head>
  <body>
    <div class="grid pswp-gallery" id="my-gallery">
      <!-- Copy and paste from here to your post -->
{{- range .Items}}
      <div class="grid-item">
        <a href="{{.Href}}" data-pswp-width="{{.Width}}" data-pswp-height="{{.Height}}"{{if .Video}} data-pswp-type="video"{{end}} target="_blank">
          <img src="{{.Thumbnail}}" alt="">
        </a>
      </div>
{{- end}}
      <!-- End copy and paste -->
    </div>
    <script type="module">
      import PhotoSwipeLightbox from "{{.Assets}}/js/photoswipe/photoswipe-lightbox.esm.min.js";
      import PhotoSwipeVideoPlugin from "{{.Assets}}/js/photoswipe/photoswipe-video-plugin.esm.min.js";
      import PhotoSwipe from "{{.Assets}}/js/photoswipe/photoswipe.esm.min.js";

      const lightbox = new PhotoSwipeLightbox({
        gallery: "#my-gallery",
        children: "a",
        pswpModule: PhotoSwipe
      });
      const videoPlugin = new PhotoSwipeVideoPlugin(lightbox, {});
      lightbox.init();
    </script>
    <script>
      var elem = document.querySelector(".grid");
      var msnry = new Masonry(elem, {
        itemSelector: ".grid-item",
        columnWidth: {{.ColumnWidth}}
      });

      imagesLoaded(elem).on("progress", function() {
        msnry.layout();
      });
    </script>
  </body>
</html>
`))

type pageData struct {
	Assets      string
	ItemWidth   int
	ColumnWidth int
	Items       []Item
}
